package config

// UploadConfig - ограничения на файл, который клиент кладет в тело записи (base64 в JSON).
type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

var UploadContexts = map[string]UploadConfig{
	"equipment_photo": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"},
		MaxSizeMB:        5,
	},
	"consumable_photo": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp"},
		MaxSizeMB:        5,
	},
}

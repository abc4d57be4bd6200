package seeders

var statusesData = []string{
	"В эксплуатации",
	"На хранении",
	"В ремонте",
	"Требует списания",
	"Списано",
}

var directionsData = []string{
	"Информационные технологии",
	"Учебный процесс",
	"Администрация",
	"Бухгалтерия",
}

var equipmentTypesData = []string{
	"Компьютер",
	"Ноутбук",
	"Монитор",
	"Принтер",
	"МФУ",
	"Проектор",
	"Интерактивная доска",
	"Сетевое оборудование",
}

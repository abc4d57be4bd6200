package authz

// Can отвечает, есть ли у роли указанная возможность.
// Пустая или неизвестная роль не может ничего.
func Can(role string, capability Capability) bool {
	caps, ok := capabilities[Role(role)]
	if !ok {
		return false
	}
	return caps[capability]
}

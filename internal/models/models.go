package model

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Workspace{},
		&Status{},
		&BoardColumn{},
		&Task{},
	}
}

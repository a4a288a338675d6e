package ordering

import "gorm.io/gorm"

// Move takes row id out of scope fromID at rank `from` and inserts it into
// scope toID at rank `to`. The source closes its gap and the destination
// opens a slot. Moves within one scope are plain reorders.
func Move(tx *gorm.DB, s Scope, id, fromID string, from int, toID string, to int, set map[string]any) error {
	if fromID == toID {
		return Reorder(tx, s, fromID, id, from, to, set)
	}

	if err := shift(tx, s, fromID, id, -1, s.RankColumn+" > ?", from); err != nil {
		return err
	}
	if err := shift(tx, s, toID, id, 1, s.RankColumn+" >= ?", to); err != nil {
		return err
	}

	fields := make(map[string]any, len(set)+1)
	for k, v := range set {
		fields[k] = v
	}
	fields[s.KeyColumn] = toID
	return place(tx, s, fromID, id, to, fields)
}

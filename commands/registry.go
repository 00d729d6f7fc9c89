package commands

// Registry returns all command definitions bound to store.
func Registry(store Store) []Definition {
	return []Definition{SaveRecordsDefinition(store), LoadRecordsDefinition(store)}
}

// Lookup returns the definition named name, if any.
func Lookup(defs []Definition, name string) (Definition, bool) {
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

package endpoints

// DefaultEndpoints is the built-in catalogue used when no endpoints file exists.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{
			ID:   "posts",
			Name: "Posts",
			Type: TypeCollection,
			URL:  "https://jsonplaceholder.typicode.com/posts",
			Layout: &Layout{
				HeadingLabel: "Post #",
				HeadingPath:  "id",
				Fields: []FieldSpec{
					{Label: "Title", Path: "title"},
					{Label: "Content", Path: "body"},
					{Label: "User ID", Path: "userId"},
				},
			},
		},
		{
			ID:   "users",
			Name: "Users",
			Type: TypeCollection,
			URL:  "https://jsonplaceholder.typicode.com/users",
			Layout: &Layout{
				HeadingLabel: "User #",
				HeadingPath:  "id",
				Fields: []FieldSpec{
					{Label: "Name", Path: "name"},
					{Label: "Email", Path: "email"},
					{Label: "Company", Path: "company.name"},
				},
			},
		},
		{
			ID:   "albums",
			Name: "Albums",
			Type: TypeCollection,
			URL:  "https://jsonplaceholder.typicode.com/albums",
			Layout: &Layout{
				HeadingLabel: "Album #",
				HeadingPath:  "id",
				Fields: []FieldSpec{
					{Label: "Title", Path: "title"},
					{Label: "User ID", Path: "userId"},
				},
			},
		},
		{
			ID:   "todos",
			Name: "Todos",
			Type: TypeCollection,
			URL:  "https://jsonplaceholder.typicode.com/todos",
			Layout: &Layout{
				HeadingLabel: "Todo #",
				HeadingPath:  "id",
				Fields: []FieldSpec{
					{Label: "Title", Path: "title"},
					{Label: "Completed", Path: "completed"},
					{Label: "User ID", Path: "userId"},
				},
			},
		},
		{
			ID:    "pokemon",
			Name:  "Pokémon base experience",
			Type:  TypeLookup,
			URL:   "https://pokeapi.co/api/v2/pokemon",
			Items: []string{"Pikachu", "Bulbasaur", "Charmander", "Squirtle", "Jigglypuff", "james"},
			Lookup: &LookupLayout{
				ValuePath: "base_experience",
				Message:   "{name} has base experience: {value}",
			},
		},
	}
}

// DefaultRegistry wires up the built-in catalogue.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultEndpoints())
	if err != nil {
		panic("endpoints: invalid built-in catalogue: " + err.Error())
	}
	return reg
}

package domain

// Item est la vue minimale d'un objet renvoyée par une source de données.
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CraftType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

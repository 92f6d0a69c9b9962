package datastore

import "github.com/berge-project/berge/internal/livre"

// Exploration is a multi-year exploration of one river.
type Exploration struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description,omitempty"`
}

// Marche is a single walk day within an exploration.
type Marche struct {
	ID          string  `json:"id"`
	Nom         string  `json:"nom"`
	Region      string  `json:"region"`
	Departement string  `json:"departement"`
	Commune     string  `json:"commune"`
	Date        string  `json:"date"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Counts aggregates the media recorded on one marche.
type Counts struct {
	Photos int `json:"photos"`
	Textes int `json:"textes"`
	Audios int `json:"audios"`
}

// TexteRow is a text as stored by the collaborator.
type TexteRow struct {
	ID        string   `json:"id"`
	MarcheID  string   `json:"marche_id"`
	MarcheNom string   `json:"marche_nom,omitempty"`
	Titre     string   `json:"titre"`
	Contenu   string   `json:"contenu"`
	Type      string   `json:"type"`
	Partie    string   `json:"partie,omitempty"`
	Lieu      string   `json:"lieu,omitempty"`
	Date      string   `json:"date,omitempty"`
	Ordre     int      `json:"ordre"`
	Tags      []string `json:"tags,omitempty"`
}

// Texte converts the stored row to the livre representation used by
// pagination and the document builders.
func (r TexteRow) Texte() livre.Texte {
	return livre.Texte{
		ID:        r.ID,
		Titre:     r.Titre,
		Contenu:   r.Contenu,
		Type:      livre.TexteType(r.Type),
		MarcheID:  r.MarcheID,
		MarcheNom: r.MarcheNom,
		Partie:    r.Partie,
		Lieu:      r.Lieu,
		Date:      r.Date,
		Position:  r.Ordre,
		Tags:      r.Tags,
	}
}

// Filter narrows a marche listing. Zero fields are ignored.
type Filter struct {
	ExplorationID string
	Region        string
	DateFrom      string
	DateTo        string
}

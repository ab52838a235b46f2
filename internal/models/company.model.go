package models

type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RawCompany covers both the authenticated shape and the public one, which
// additionally exposes slug/branding fields.
type RawCompany struct {
	UID         int    `json:"uid"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Logo        string `json:"logo"`
}

type PublicCompany struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

func SerializeCompany(raw RawCompany) Company {
	return Company{
		ID:   raw.UID,
		Name: raw.Name,
	}
}

func SerializeCompanies(raws []RawCompany) []Company {
	companies := make([]Company, 0, len(raws))
	for _, raw := range raws {
		companies = append(companies, SerializeCompany(raw))
	}
	return companies
}

func SerializePublicCompany(raw RawCompany) PublicCompany {
	return PublicCompany{
		ID:          raw.UID,
		Name:        raw.Name,
		Slug:        raw.Slug,
		Description: raw.Description,
		Website:     raw.Website,
		Logo:        raw.Logo,
	}
}

package vpic

// ModelsResponse is the payload of GET /vehicles/getmodelsformake/{make}?format=json
type ModelsResponse struct {
	Count          int         `json:"Count"`
	Message        string      `json:"Message"`
	SearchCriteria string      `json:"SearchCriteria"`
	Results        []MakeModel `json:"Results"`
}

// MakeModel is one entry of the vPIC result set
type MakeModel struct {
	MakeID    int64  `json:"Make_ID"`
	MakeName  string `json:"Make_Name"`
	ModelID   int64  `json:"Model_ID"`
	ModelName string `json:"Model_Name"`
}

// Vehicle is a normalized make/model pair ready to be stored as a car
type Vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

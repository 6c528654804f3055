package domain

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

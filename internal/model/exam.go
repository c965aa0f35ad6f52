package model

// Measurements are the three linear dimensions of a thyroid lobe, in centimeters.
type Measurements struct {
	Length    float64 `json:"comprimento"`
	Width     float64 `json:"largura"`
	Thickness float64 `json:"espessura"`
}

// Nodule is the free-text description of a single observed nodule.
type Nodule struct {
	Location       string `json:"local"`
	DimensionsMM   string `json:"dimensoes_mm"`
	Composition    string `json:"composicao"`
	Echogenicity   string `json:"ecogenicidade"`
	Margins        string `json:"margens"`
	Calcifications string `json:"calcificacoes"`
	Shape          string `json:"formato"`
}

// ExamInput is the full patient/exam payload accepted by the report endpoint.
type ExamInput struct {
	Age              int          `json:"idade"`
	Sex              string       `json:"sexo"`
	RightLobe        Measurements `json:"medidas_lobo_direito"`
	LeftLobe         Measurements `json:"medidas_lobo_esquerdo"`
	IsthmusThickness float64      `json:"espessura_istmo"`
	Nodules          []Nodule     `json:"nodulos"`
}

// HasNodules reports whether at least one nodule was described.
func (e *ExamInput) HasNodules() bool {
	return len(e.Nodules) > 0
}

// Package report builds the textual thyroid ultrasound report from exam measurements.
package report

import (
	"strconv"
	"strings"

	"laudoapi/internal/model"
)

const (
	// LabelNodule is a fixed placeholder, not a computed TI-RADS classification.
	LabelNodule       = "TI-RADS 4"
	LabelNoNodules    = "Sem nódulos identificados"
	NoNodulesSentence = "Ausência de nódulos visíveis."
)

const header = `ULTRASSONOGRAFIA DA TIREOIDE

REFERÊNCIA CLÍNICA:
Exame solicitado para avaliação da glândula tireoide.

TÉCNICA:
Exame realizado com transdutor linear de alta frequência.

RELATÓRIO:
`

// Formatter renders exams into the fixed report template.
type Formatter struct {
	narrator Narrator
}

// NewFormatter returns a Formatter using the given nodule narrator.
// A nil narrator falls back to FirstNoduleNarrator.
func NewFormatter(n Narrator) *Formatter {
	if n == nil {
		n = FirstNoduleNarrator{}
	}
	return &Formatter{narrator: n}
}

// Format produces the report text. It is deterministic and has no side effects.
func (f *Formatter) Format(exam *model.ExamInput) string {
	right := Volume(exam.RightLobe)
	left := Volume(exam.LeftLobe)
	total := TotalVolume(right, left)

	label := LabelNoNodules
	findings := NoNodulesSentence
	if exam.HasNodules() {
		label = LabelNodule
		findings = strings.Join(f.narrator.Sentences(exam.Nodules), "\n")
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("Lobo direito: " + formatVolume(right) + " cm³\n")
	b.WriteString("Lobo esquerdo: " + formatVolume(left) + " cm³\n")
	b.WriteString("Volume total estimado: " + formatVolume(total) + " cm³\n")
	b.WriteString("Istmo: " + strconv.FormatFloat(exam.IsthmusThickness, 'f', 2, 64) + " cm\n")
	b.WriteString("\n")
	b.WriteString(findings + "\n")
	b.WriteString("\n")
	b.WriteString("OPINIÃO:\n")
	b.WriteString("• " + label + "\n")
	b.WriteString("• Volume glandular compatível com sexo " + exam.Sex + " e idade " + strconv.Itoa(exam.Age) + " anos.\n")
	return b.String()
}

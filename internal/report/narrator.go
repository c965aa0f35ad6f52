package report

import (
	"fmt"

	"laudoapi/internal/model"
)

// Narrator turns the nodules of an exam into report sentences, one per line.
type Narrator interface {
	Sentences(nodules []model.Nodule) []string
}

// FirstNoduleNarrator describes only the first nodule of the exam.
type FirstNoduleNarrator struct{}

func (FirstNoduleNarrator) Sentences(nodules []model.Nodule) []string {
	if len(nodules) == 0 {
		return nil
	}
	return []string{NoduleSentence(nodules[0])}
}

// EachNoduleNarrator describes every nodule, in input order.
type EachNoduleNarrator struct{}

func (EachNoduleNarrator) Sentences(nodules []model.Nodule) []string {
	out := make([]string, 0, len(nodules))
	for _, n := range nodules {
		out = append(out, NoduleSentence(n))
	}
	return out
}

// NoduleSentence renders the fixed description sentence of a single nodule.
func NoduleSentence(n model.Nodule) string {
	return fmt.Sprintf(
		"Nódulo identificado no lobo %s, medindo %s mm, de composição %s, ecogenicidade %s, margens %s, calcificações %s, formato %s.",
		n.Location, n.DimensionsMM, n.Composition, n.Echogenicity, n.Margins, n.Calcifications, n.Shape,
	)
}

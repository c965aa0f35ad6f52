package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one offending field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an exam payload is malformed, has missing
// required fields or fields of the wrong type.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

const (
	msgRequired = "field required"
	msgInteger  = "must be an integer"
	msgNumber   = "must be a number"
	msgString   = "must be a string"
	msgObject   = "must be an object"
	msgArray    = "must be an array"
)

type rawMeasurements struct {
	Length    *float64 `json:"comprimento" validate:"required"`
	Width     *float64 `json:"largura" validate:"required"`
	Thickness *float64 `json:"espessura" validate:"required"`
}

type rawNodule struct {
	Location       *string `json:"local" validate:"required"`
	DimensionsMM   *string `json:"dimensoes_mm" validate:"required"`
	Composition    *string `json:"composicao" validate:"required"`
	Echogenicity   *string `json:"ecogenicidade" validate:"required"`
	Margins        *string `json:"margens" validate:"required"`
	Calcifications *string `json:"calcificacoes" validate:"required"`
	Shape          *string `json:"formato" validate:"required"`
}

type rawExam struct {
	Age              *int             `json:"idade" validate:"required"`
	Sex              *string          `json:"sexo" validate:"required"`
	RightLobe        *rawMeasurements `json:"medidas_lobo_direito" validate:"required"`
	LeftLobe         *rawMeasurements `json:"medidas_lobo_esquerdo" validate:"required"`
	IsthmusThickness *float64         `json:"espessura_istmo" validate:"required"`
	Nodules          []rawNodule      `json:"nodulos" validate:"required,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeExam parses a JSON exam payload. Keys are matched exactly. Numbers
// sent as numeric strings are accepted, and so are whole-number floats for
// integer fields. Every missing or mistyped field is collected into a single
// *ValidationError; unknown fields are ignored.
func DecodeExam(data []byte) (*ExamInput, error) {
	verr := &ValidationError{}

	if !json.Valid(data) {
		verr.add("body", "malformed JSON payload")
		return nil, verr
	}

	d := &examDecoder{verr: verr, mistyped: map[string]bool{}}
	fields, ok := d.object("body", data)
	if !ok {
		if len(verr.Fields) == 0 {
			verr.add("body", msgObject)
		}
		return nil, verr
	}

	raw := rawExam{
		Age:              d.integer("idade", fields["idade"]),
		Sex:              d.str("sexo", fields["sexo"]),
		RightLobe:        d.measurements("medidas_lobo_direito", fields["medidas_lobo_direito"]),
		LeftLobe:         d.measurements("medidas_lobo_esquerdo", fields["medidas_lobo_esquerdo"]),
		IsthmusThickness: d.number("espessura_istmo", fields["espessura_istmo"]),
		Nodules:          d.nodules("nodulos", fields["nodulos"]),
	}

	if err := validate.Struct(raw); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate exam: %w", err)
		}
		for _, fe := range fieldErrs {
			field := fieldPath(fe)
			if d.mistyped[field] {
				continue
			}
			verr.add(field, validationMessage(fe))
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return raw.exam(), nil
}

func (r rawExam) exam() *ExamInput {
	exam := &ExamInput{
		Age:              *r.Age,
		Sex:              *r.Sex,
		RightLobe:        r.RightLobe.measurements(),
		LeftLobe:         r.LeftLobe.measurements(),
		IsthmusThickness: *r.IsthmusThickness,
		Nodules:          make([]Nodule, 0, len(r.Nodules)),
	}
	for _, n := range r.Nodules {
		exam.Nodules = append(exam.Nodules, Nodule{
			Location:       *n.Location,
			DimensionsMM:   *n.DimensionsMM,
			Composition:    *n.Composition,
			Echogenicity:   *n.Echogenicity,
			Margins:        *n.Margins,
			Calcifications: *n.Calcifications,
			Shape:          *n.Shape,
		})
	}
	return exam
}

func (m *rawMeasurements) measurements() Measurements {
	return Measurements{Length: *m.Length, Width: *m.Width, Thickness: *m.Thickness}
}

// fieldPath drops the root struct name from the validator namespace:
// "rawExam.nodulos[0].local" becomes "nodulos[0].local".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return msgRequired
	}
	return "failed " + fe.Tag() + " check"
}

// examDecoder decodes one JSON value at a time so that a type mismatch in one
// field does not hide problems in the others. Fields that fail to decode are
// remembered and not reported again as missing.
type examDecoder struct {
	verr     *ValidationError
	mistyped map[string]bool
}

func (d *examDecoder) fail(field, message string) {
	d.mistyped[field] = true
	d.verr.add(field, message)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (d *examDecoder) object(field string, raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		d.fail(field, msgObject)
		return nil, false
	}
	return fields, true
}

// scalar decodes a single JSON value, keeping numbers as json.Number.
func scalar(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func (d *examDecoder) number(field string, raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	f, ok := parseNumber(scalar(raw))
	if !ok {
		d.fail(field, msgNumber)
		return nil
	}
	return &f
}

func (d *examDecoder) integer(field string, raw json.RawMessage) *int {
	if isNull(raw) {
		return nil
	}
	v := scalar(raw)
	if n, ok := v.(json.Number); ok {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			out := int(i)
			return &out
		}
	}
	f, ok := parseNumber(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		d.fail(field, msgInteger)
		return nil
	}
	out := int(f)
	return &out
}

func (d *examDecoder) str(field string, raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	s, ok := scalar(raw).(string)
	if !ok {
		d.fail(field, msgString)
		return nil
	}
	return &s
}

// parseNumber accepts JSON numbers and strings holding a finite number.
func parseNumber(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func (d *examDecoder) measurements(field string, raw json.RawMessage) *rawMeasurements {
	fields, ok := d.object(field, raw)
	if !ok {
		return nil
	}
	return &rawMeasurements{
		Length:    d.number(field+".comprimento", fields["comprimento"]),
		Width:     d.number(field+".largura", fields["largura"]),
		Thickness: d.number(field+".espessura", fields["espessura"]),
	}
}

func (d *examDecoder) nodules(field string, raw json.RawMessage) []rawNodule {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.fail(field, msgArray)
		return nil
	}

	out := make([]rawNodule, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", field, i)
		fields, ok := d.object(path, item)
		if !ok {
			if isNull(item) {
				d.fail(path, msgObject)
			}
			// keep indexes aligned with the payload
			out = append(out, rawNodule{})
			d.skipNodule(path)
			continue
		}
		out = append(out, rawNodule{
			Location:       d.str(path+".local", fields["local"]),
			DimensionsMM:   d.str(path+".dimensoes_mm", fields["dimensoes_mm"]),
			Composition:    d.str(path+".composicao", fields["composicao"]),
			Echogenicity:   d.str(path+".ecogenicidade", fields["ecogenicidade"]),
			Margins:        d.str(path+".margens", fields["margens"]),
			Calcifications: d.str(path+".calcificacoes", fields["calcificacoes"]),
			Shape:          d.str(path+".formato", fields["formato"]),
		})
	}
	return out
}

// skipNodule silences the per-field required errors of a nodule that was
// already reported as a whole.
func (d *examDecoder) skipNodule(path string) {
	for _, name := range []string{"local", "dimensoes_mm", "composicao", "ecogenicidade", "margens", "calcificacoes", "formato"} {
		d.mistyped[path+"."+name] = true
	}
}

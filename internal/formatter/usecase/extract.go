package usecase

import (
	"regexp"

	"builders-panel/internal/formatter"
	"builders-panel/internal/model"
)

// Field names produced by the extractors.
const (
	FieldSolicitud = "solicitud"
	FieldOrden     = "orden"
	FieldInicio    = "inicio"
	FieldFin       = "fin"
	FieldLat       = "lat"
	FieldLng       = "lng"
	FieldProyecto  = "proyecto"
	FieldTipo      = "tipo"
)

var (
	orderCreatedPattern = regexp.MustCompile(
		`Solicitud (\d+).*?Orden(\d+).*?Inicio=(\d{4}-\d{2}-\d{2}).*?Fin=(\d{4}-\d{2}-\d{2}).*?\(([-\d.]+),([-\d.]+)\)`)

	requestCreatedPattern = regexp.MustCompile(
		`Solicitud (\d+) creada.*?Proyecto=(.*?), Tipo=(.*?), Coordenadas=\(([-\d.]+),([-\d.]+)\)`)
)

var rules = map[formatter.EventType]rule{
	formatter.EventOrderCreated: {
		icon:    "✔",
		label:   "ORDEN CREADA",
		extract: patternExtractor(orderCreatedPattern, FieldSolicitud, FieldOrden, FieldInicio, FieldFin, FieldLat, FieldLng),
		rows: func(v map[string]string) []model.Row {
			return []model.Row{
				{Label: "Solicitud", Value: v[FieldSolicitud]},
				{Label: "Número de Orden", Value: v[FieldOrden]},
				{Label: "Fecha de Inicio", Value: v[FieldInicio]},
				{Label: "Fecha de Terminación", Value: v[FieldFin]},
				{Label: "Coordenadas", Value: coordinates(v)},
			}
		},
	},
	formatter.EventConstructionRequestCreated: {
		icon:    "✔",
		label:   "SOLICITUD CREADA",
		extract: patternExtractor(requestCreatedPattern, FieldSolicitud, FieldProyecto, FieldTipo, FieldLat, FieldLng),
		rows: func(v map[string]string) []model.Row {
			return []model.Row{
				{Label: "ID Solicitud", Value: v[FieldSolicitud]},
				{Label: "Proyecto", Value: v[FieldProyecto]},
				{Label: "Tipo de Construcción", Value: v[FieldTipo]},
				{Label: "Coordenadas", Value: coordinates(v)},
			}
		},
	},
	formatter.EventConstructionRequestRejected: {icon: "❌", label: "SOLICITUD RECHAZADA"},
	formatter.EventConstructionRequestApproved: {icon: "✔", label: "SOLICITUD APROBADA"},
	formatter.EventConstructionRequestFailed:   {icon: "⚠️", label: "ERROR EN SOLICITUD"},
}

// patternExtractor maps the capture groups of re, in order, onto names.
func patternExtractor(re *regexp.Regexp, names ...string) extractor {
	return func(payload string) ([]model.Field, bool) {
		m := re.FindStringSubmatch(payload)
		if m == nil || len(m) != len(names)+1 {
			return nil, false
		}
		fields := make([]model.Field, len(names))
		for i, name := range names {
			fields[i] = model.Field{Name: name, Value: m[i+1]}
		}
		return fields, true
	}
}

func coordinates(v map[string]string) string {
	return "(" + v[FieldLat] + ", " + v[FieldLng] + ")"
}

package service

const (
	// Sustituye un retorno neto de 0 para evitar división por cero
	ZeroNetReturnEpsilon = 0.0000001

	// Edad máxima de búsqueda; por encima el objetivo no se alcanza
	MaxRetirementAge = 200

	MonthsPerYear = 12

	// Valores de reemplazo cuando un campo numérico no se puede leer
	ParseFallback                    = 0.0
	PostRetirementReturnRateFallback = 100.0
)

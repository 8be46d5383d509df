package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los mapean
// a códigos de estado; las capas internas los comparan con errors.Is.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrItemNotFound          = errors.New("artículo no encontrado")
	ErrLocationNotFound      = errors.New("ubicación no encontrada")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor que cero")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrSameLocation          = errors.New("la ubicación origen y destino no pueden ser la misma")
	ErrInvalidSlipTransition = errors.New("transición de estado de vale no permitida")
	ErrMissingField          = errors.New("falta un campo obligatorio")
	ErrItemHasStock          = errors.New("el artículo tiene registros de stock")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
)

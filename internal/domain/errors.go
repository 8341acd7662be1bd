package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los pipelines de exportación/importación distinguen cuatro familias:
// persistencia (store inaccesible o sentencia fallida), no-encontrado
// (archivo o registro ausente), formato (línea o archivo malformado) y
// permisos (no se puede escribir en el destino). Los adaptadores envuelven
// sus errores concretos con fmt.Errorf("...: %w", Err*) para que la capa
// de aplicación decida con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrPersistence        = errors.New("error de persistencia")
	ErrFormat             = errors.New("formato inválido")
	ErrPermission         = errors.New("permiso denegado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

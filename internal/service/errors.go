package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Rejection sentinels. Every one of these is a recoverable validation
// rejection: control returns to the register screen with a message and no
// state is mutated.
var (
	ErrInvalidTicket       = errors.New("el ticket no es válido")
	ErrEmptyTicket         = errors.New("el ticket está vacío")
	ErrClientRequired      = errors.New("debes asignar un cliente para poder cobrar")
	ErrInsufficientPayment = errors.New("falta dinero para completar el pago")

	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrOutOfStock       = errors.New("este producto no tiene stock disponible")
	ErrQuickClientName  = errors.New("el nombre del cliente rápido es obligatorio")
	ErrClientNotFound   = errors.New("cliente no encontrado o inactivo")

	ErrSaleNotFound     = errors.New("venta no encontrada")
	ErrAlreadyCancelled = errors.New("esta venta ya estaba cancelada")
	ErrNotPaid          = errors.New("solo se pueden cancelar ventas pagadas")

	ErrRegisterOpen          = errors.New("ya hay una caja abierta")
	ErrNoOpenRegister        = errors.New("no hay caja abierta")
	ErrNegativeClosingAmount = errors.New("el monto de cierre no puede ser negativo")
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для общих ошибок
бизнес-логики и домена модерации.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidTransition - фабрика для запрещенных переходов статуса (409)
func ErrInvalidTransition(domain, message string) *AppError {
	return New(CodeInvalidTransition, domain, message, http.StatusConflict)
}

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrNotOwner - пользователь пытается изменить чужой ресурс.
var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"You do not own this resource",
	http.StatusForbidden,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - просроченный или поддельный токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists - email уже зарегистрирован.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

// ErrWeakPassword - пароль не проходит минимальные требования.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

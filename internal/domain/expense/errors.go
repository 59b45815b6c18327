package expense

import "errors"

var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrCategoryNotFound = errors.New("expense category not found")
	ErrCategoryExists   = errors.New("expense category already exists")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
)

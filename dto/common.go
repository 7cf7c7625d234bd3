package dto

import "socios/response"

// PaginatedResponse es el struct común para respuestas paginadas
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

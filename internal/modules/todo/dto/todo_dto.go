package dto

type CreateTodoRequest struct {
	Name string `json:"name" binding:"required,notblank,max=200"`
}

// UpdateTodoRequest leaves fields that are not sent untouched.
type UpdateTodoRequest struct {
	Name      *string `json:"name" binding:"omitempty,notblank,max=200"`
	Completed *bool   `json:"completed"`
}

type TodoResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Result é o envelope dos endpoints de formulário: sempre HTTP 200,
// o desfecho vai no flag.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Success(c *gin.Context, message string) {
	c.JSON(200, Result{Success: true, Message: message})
}

func Fail(c *gin.Context, message string) {
	c.JSON(200, Result{Success: false, Message: message})
}

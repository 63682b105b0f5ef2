package dto

type SearchQuery struct {
	Q string `form:"q" binding:"required,notblank,max=200"`
}

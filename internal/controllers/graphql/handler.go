package graphql

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewGinHandler mounts the schema as a gin handler. Authentication is
// optional here; unauthenticated requests reach the schema and the gated
// resolvers reject them individually.
func NewGinHandler(schema graphql.Schema) gin.HandlerFunc {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	return gin.WrapH(h)
}

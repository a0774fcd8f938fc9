package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const actorIDKey = contextKey("actorID")

// ActorHeader is supplied by the identity collaborator in front of this
// service. The value is recorded for attribution, never authenticated here.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware copies the actor header into the request context. Routes
// that mutate state reject requests without one via RequireActor.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), actorIDKey, actor))
		}
		c.Next()
	}
}

// GetActorFromCtx retrieves the actor id from the context.
func GetActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorIDKey).(string)
	return actor, ok && actor != ""
}

// RequireActor aborts requests that carry no actor attribution.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetActorFromCtx(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + ActorHeader + " header"})
			return
		}
		c.Next()
	}
}

package chat

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"apna_room_server/internal/dao/mysql/repository"
	"apna_room_server/pkg/errorx"
	"apna_room_server/pkg/util/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway authenticates websocket handshakes and hands accepted
// connections to the hub. Every rejection happens before the upgrade,
// so unauthenticated callers get a plain HTTP status, never a socket.
type Gateway struct {
	hub      *Hub
	broker   Broker
	userRepo repository.UserRepository
}

// NewGateway wires the handshake handler.
func NewGateway(hub *Hub, broker Broker, userRepo repository.UserRepository) *Gateway {
	return &Gateway{hub: hub, broker: broker, userRepo: userRepo}
}

// authenticate resolves the token from the query string or the
// Authorization header and returns the caller's user id.
func (g *Gateway) authenticate(c *gin.Context) (string, error) {
	token := c.Query("token")
	if token == "" {
		auth := c.GetHeader("Authorization")
		if len(auth) > 7 && auth[:7] == "Bearer " {
			token = auth[7:]
		}
	}
	if token == "" {
		return "", errorx.New(errorx.CodeUnauthorized, "token required")
	}

	claims, err := jwt.ParseToken(token)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeUnauthorized, "token invalid or expired")
	}
	if claims.Subject != "access_token" {
		return "", errorx.New(errorx.CodeUnauthorized, "access token required")
	}
	return claims.UserID, nil
}

// Handle is the /ws endpoint.
func (g *Gateway) Handle(c *gin.Context) {
	userId, err := g.authenticate(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"code": errorx.GetCode(err),
			"msg":  "authentication failed",
		})
		return
	}

	// The token may outlive the account; the row check catches that.
	user, err := g.userRepo.FindByUuid(userId)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "unknown user",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.String("user_id", userId), zap.Error(err))
		return
	}

	session := NewSession(user.Uuid, user.FullName, conn)
	g.hub.Register(session)

	go session.writePump()
	go session.readPump(context.Background(), g.broker, g.hub.unregister)
}

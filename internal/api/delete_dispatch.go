package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iptv-hub/internal/auth"
	"iptv-hub/internal/config"
	"iptv-hub/internal/store"
)

// DeleteDispatch serves both DELETE routes from one catch-all. gin's tree
// cannot register a root-level ":id" param next to the static
// "/dashBoard" prefix on the same method, so the split happens here and
// the public paths stay unchanged.
//
//	DELETE /:id                       admin          delete channel
//	DELETE /dashBoard/allUsers/:id    authenticated  delete user
func DeleteDispatch(cfg *config.Config, gw *store.Gateway) gin.HandlerFunc {
	authenticate := auth.RequireAuth(cfg)
	authorize := auth.RequireAdmin(gw)
	deleteChannel := DeleteChannelHandler(gw)
	deleteUser := DeleteUserHandler(gw)
	return func(c *gin.Context) {
		target := strings.TrimPrefix(c.Param("target"), "/")
		if id, ok := strings.CutPrefix(target, "dashBoard/allUsers/"); ok && !strings.Contains(id, "/") {
			c.AddParam("id", id)
			runChain(c, authenticate, deleteUser)
			return
		}
		if target == "" || strings.Contains(target, "/") {
			respondError(c, http.StatusNotFound, kindNotFound, "Not found")
			return
		}
		c.AddParam("id", target)
		runChain(c, authenticate, authorize, deleteChannel)
	}
}

func runChain(c *gin.Context, chain ...gin.HandlerFunc) {
	for _, h := range chain {
		h(c)
		if c.IsAborted() {
			return
		}
	}
}

package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheNoStore = -1 // for admin data and exports
	CacheCustom  = -2 // the handler sets its own header
)

type CacheRouter struct {
	CacheTime int // defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case cr.CacheTime == CacheCustom:
		case cr.CacheTime == CacheNoCache:
			c.Header("cache-control", "no-cache")
		case cr.CacheTime == CacheNoStore:
			c.Header("cache-control", "no-store")
		default:
			c.Header("cache-control", "public, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}

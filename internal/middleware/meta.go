package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	metaStartKey = "responseMetaStart"
	metaKey      = "responseMeta"
)

// ResponseMeta starts the clock for the processing time reported in response meta.
func ResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Next()
	}
}

// SetCacheHit records whether the response body came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)["cacheHit"] = hit
}

// ExtractMeta returns the metadata collected so far, including the elapsed processing time.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, exists := c.Get(metaKey)
	meta, _ := value.(map[string]interface{})
	if start, ok := c.Get(metaStartKey); ok {
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["processingTimeMs"] = time.Since(start.(time.Time)).Milliseconds()
	}
	if !exists && len(meta) == 0 {
		return nil
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if value, exists := c.Get(metaKey); exists {
		if meta, ok := value.(map[string]interface{}); ok {
			return meta
		}
	}
	meta := map[string]interface{}{}
	c.Set(metaKey, meta)
	return meta
}

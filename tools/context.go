package tools

import "github.com/gin-gonic/gin"

const analyzerKey = "nlu"

// Use este middleware no setup do gin
func SetAnalyzerToContext(a Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(analyzerKey, a)
		c.Next()
	}
}

func AnalyzerInstance(c *gin.Context) Analyzer {
	v, ok := c.Get(analyzerKey)
	if !ok {
		return nil
	}
	a, _ := v.(Analyzer)
	return a
}

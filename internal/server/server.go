package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gotweet/internal/app"
	"github.com/hyperifyio/gotweet/internal/feed"
	"github.com/hyperifyio/gotweet/internal/twitter"
)

// New builds the HTTP API around an App. Routes mirror the pipeline surface:
// health, one-shot URL analysis, and posting the produced thread. Session and
// OAuth handshake flows live outside this service.
func New(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", handleHealth)
	r.GET("/api/", handleGreet)
	r.GET("/api/url-analysis", handleURLAnalysis(a))
	r.GET("/api/tech-articles", handleTechArticles(a))
	r.POST("/api/twitter/post", handlePost(a))

	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "running..."})
}

func handleGreet(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		name = "world"
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hello, " + name + "!"})
}

// handleURLAnalysis runs the full tweet pipeline for ?url=. A page with
// nothing to post yields a JSON null body, matching the pipeline's nil
// result; generation failures are 502-class errors.
func handleURLAnalysis(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := c.Query("url")
		if url == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing url parameter"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), a.Config().RequestTimeout)
		defer cancel()

		res, err := a.TweetFromURL(ctx, url, c.Query("additional_text"))
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("tweet generation failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if res == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// handleTechArticles lists the latest entries of one of the known tech RSS
// feeds. Feed failures come back as a 200 with an error field and an empty
// article list so the browsing UI can render the empty state.
func handleTechArticles(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.DefaultQuery("source", "techcrunch")
		ctx, cancel := context.WithTimeout(c.Request.Context(), a.Config().RequestTimeout)
		defer cancel()

		articles, err := a.Feeds().Latest(ctx, source)
		if err != nil {
			log.Error().Err(err).Str("source", source).Msg("feed fetch failed")
			c.JSON(http.StatusOK, gin.H{"articles": []feed.Article{}, "source": source, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"articles": articles, "source": source, "count": len(articles)})
	}
}

// handlePost publishes the submitted tweets as a reply chain.
func handlePost(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		tw := a.Twitter()
		if tw == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "not_authenticated",
				"message": "no Twitter credentials configured",
			})
			return
		}
		tweets := c.PostFormArray("tweets")
		if len(tweets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no tweets provided"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), a.Config().RequestTimeout)
		defer cancel()

		posted, err := tw.PostThread(ctx, tweets)
		if err != nil {
			var apiErr *twitter.APIError
			status := http.StatusBadGateway
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
				// Access-tier rejections are surfaced, not simulated away.
				status = http.StatusForbidden
			}
			log.Error().Err(err).Int("posted", len(posted)).Msg("posting failed")
			c.JSON(status, gin.H{"error": err.Error(), "posted": posted})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "tweets": posted})
	}
}

package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"innocrawl/api"
	"innocrawl/api/crawler"
	"innocrawl/config"
	redisdao "innocrawl/dao/redis"
	"innocrawl/db"
	"innocrawl/devserver"
	"innocrawl/devserver/handlers"
	"innocrawl/live"
	"innocrawl/util"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient   db.RedisClient
	RedisJobDao   *redisdao.RedisJobDAO
	CrawlerAPI    crawler.CrawlerAPI
	Subscriber    *live.Subscriber
	StatusHub     *devserver.StatusHub
	CrawlPipeline *devserver.CrawlPipeline
	JobHandler    *handlers.JobHandler
	SearchHandler *handlers.SearchHandler
	FeedHandler   *handlers.StatusFeedHandler
	MuxRouter     *mux.Router
	Router        *devserver.Router
	DevHttpServer *devserver.DevHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client: the dev backend keeps its job index there.
	// Outside prod an in-memory stand-in avoids needing a running Redis.
	var redisClient db.RedisClient
	if env != "prod" {
		redisClient = db.NewMockRedisClient(ctx)
		log.Printf("Using mock redis client")
	} else {
		log.Printf("Using prod redis client at %s", config.RedisAddress())
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddress(),
			Password: config.REDIS_DB_PASSWORD,
			DB:       config.REDIS_DB,
		})

		redisClient = db.NewSetRedisClient(ctx, redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	}

	// Initialize Redis Job DAO
	redisJobDao := redisdao.NewRedisJobDAO(redisClient)

	// Initialize crawler API client
	var crawlerApiClient crawler.CrawlerAPI
	if env != "prod" {
		crawlerApiClient = crawler.NewCrawlerApiClientMock()
		log.Printf("Using mock crawler api")
	} else {
		log.Printf("Using prod crawler api at %s", config.APIBaseURL())
		httpClient := api.NewHTTPClient(config.APIBaseURL())
		crawlerApiClient = crawler.NewCrawlerApiClient(httpClient)
	}

	// Initialize live status subscriber against the same backend
	subscriber := live.NewSubscriber(config.APIBaseURL())

	// Initialize the dev backend: hub, pipeline, handlers, router, server
	statusHub := devserver.NewStatusHub()

	seed, err := util.ReadProductsFromJSON(config.GetResourcePath(config.PRODUCTS_RESOURCE))
	if err != nil {
		log.Printf("Failed to read seed products, pipeline will extract none: %v", err)
	}

	crawlPipeline := devserver.NewCrawlPipeline(
		redisJobDao,
		statusHub,
		config.DEV_SERVER_STAGE_TICK_MS*time.Millisecond,
		seed,
	)

	jobHandler := handlers.NewJobHandler(redisJobDao, crawlPipeline)
	searchHandler := handlers.NewSearchHandler(redisJobDao)
	feedHandler := handlers.NewStatusFeedHandler(statusHub)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := devserver.NewRouter(jobHandler, searchHandler, feedHandler, muxRouter)

	// Initialize dev backend server
	devHttpServer := devserver.NewDevHttpServer(router, muxRouter, config.DEV_SERVER_ADDRESS)

	return &Container{
		RedisClient:   redisClient,
		RedisJobDao:   redisJobDao,
		CrawlerAPI:    crawlerApiClient,
		Subscriber:    subscriber,
		StatusHub:     statusHub,
		CrawlPipeline: crawlPipeline,
		JobHandler:    jobHandler,
		SearchHandler: searchHandler,
		FeedHandler:   feedHandler,
		MuxRouter:     muxRouter,
		Router:        router,
		DevHttpServer: devHttpServer,
	}
}

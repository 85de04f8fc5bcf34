package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/controllers"
	"github.com/spycce/SmartTrip/database"
	"github.com/spycce/SmartTrip/helpers"
	"github.com/spycce/SmartTrip/routes"
	"github.com/spycce/SmartTrip/services"
)

var ginLambdaV2 *ginadapter.GinLambdaV2

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return ginLambdaV2.ProxyWithContext(ctx, req)
}

func buildRouter(cfg *helpers.Config, repos *database.Repositories, logger *slog.Logger) *gin.Engine {
	clock := helpers.RealClock{}
	tokens := helpers.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)

	identity := services.NewIdentityService(repos.Users, tokens, cfg.BcryptCost, clock, logger)
	trips := services.NewTripService(repos.Trips, clock, logger)
	photos := services.NewPhotoService(repos.Photos, clock, logger)
	feed := services.NewFeedService(repos.Trips, repos.Photos)
	itinerary := services.NewItineraryService(services.NewOpenRouterClient(cfg), logger)
	hotels := services.NewHotelService(services.NewTripAdvisorClient(cfg), clock, logger)
	places := services.NewPlaceService(cfg, logger)

	return routes.NewRouter(routes.Controllers{
		Users:    controllers.NewUserController(identity),
		Trips:    controllers.NewTripController(trips, identity),
		Photos:   controllers.NewPhotoController(photos),
		Feed:     controllers.NewFeedController(feed),
		Generate: controllers.NewGenerateController(itinerary),
		Hotels:   controllers.NewHotelController(hotels, places),
	}, identity, logger)
}

func main() {
	cfg, err := helpers.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := helpers.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	repos, closeStore, err := database.NewRepositories(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := closeStore(ctx); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	r := buildRouter(cfg, repos, logger)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		logger.Info("starting lambda handler")
		ginLambdaV2 = ginadapter.NewV2(r)
		lambda.Start(handler)
		return
	}

	logger.Info("server listening", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

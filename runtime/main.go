package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/agile-academy/academy_api/middleware"
	"github.com/agile-academy/academy_api/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.JWTService{},
		&services.SqlService{},
		&services.RedisService{},
		&services.MinIOService{},

		&services.ContentService{},
		&services.ProgressService{},
		&services.StudyTimeService{},
		&services.QuizService{},
		&services.CaseService{},
		&services.AuthService{},
		&services.ChatService{},
		&services.MediaService{},
		&services.RateLimitService{},

		&middleware.AuthMiddleware{},
		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}

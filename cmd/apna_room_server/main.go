package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"apna_room_server/internal/config"
	dao "apna_room_server/internal/dao/mysql"
	myredis "apna_room_server/internal/dao/redis"
	"apna_room_server/internal/handler"
	"apna_room_server/internal/https_server"
	"apna_room_server/internal/infrastructure/email"
	"apna_room_server/internal/infrastructure/logger"
	"apna_room_server/internal/service"
	"apna_room_server/internal/service/chat"
	"apna_room_server/pkg/util/jwt"
	"apna_room_server/pkg/util/snowflake"
)

func main() {
	conf := config.GetConfig()

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger ready")

	repos := dao.Init()
	zap.L().Info("mysql ready")

	myredis.Init()
	zap.L().Info("redis ready")

	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)

	snowflake.Init(conf.SnowflakeConfig.MachineID)

	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("validator translator init failed", zap.Error(err))
	}

	mailer := email.NewSMTPSender(&conf.EmailConfig)

	services := service.NewServices(repos)

	chatServer := chat.NewServer(chat.ServerConfig{
		Mode:        conf.KafkaConfig.MessageMode,
		Kafka:       &conf.KafkaConfig,
		ConvRepo:    repos.Conversation,
		MsgRepo:     repos.Message,
		UserRepo:    repos.User,
		Cache:       myredis.GetCacheService(),
		Mailer:      mailer,
		FrontendURL: conf.EmailConfig.FrontendURL,
	})
	chatServer.Start()
	zap.L().Info("realtime server ready", zap.String("mode", conf.KafkaConfig.MessageMode))

	handlers := handler.NewHandlers(services, chatServer.Gateway)
	engine := https_server.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("http server stopped", zap.Error(err))
		}
	}()
	zap.L().Info("http server ready",
		zap.String("host", conf.MainConfig.Host), zap.Int("port", conf.MainConfig.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	chatServer.Close()
	zap.L().Info("server stopped")
}

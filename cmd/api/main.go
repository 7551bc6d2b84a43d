package main

import (
	"log"

	"campushub/internal/config"
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
	"campushub/internal/repository/redis"
	"campushub/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := mysql.InitDB(cfg.DSN()); err != nil {
		log.Fatalf("connect mysql: %v", err)
	}
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Membership{},
		&model.Post{},
		&model.Event{},
		&model.Comment{},
		&model.Announcement{},
		&model.Like{},
	); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	// Redis is optional; without it reset codes fail and like caching is off.
	if cfg.RedisAddr != "" {
		if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			log.Printf("redis disabled: %v", err)
		} else {
			defer redis.Close()
		}
	}

	if err := pkg.InitJWT(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTLMinutes); err != nil {
		log.Fatalf("init jwt: %v", err)
	}

	r := router.InitRouter(cfg)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

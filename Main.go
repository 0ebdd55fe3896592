package main

import (
	"context"

	"Backend/config"
	"Backend/routers"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		panic("無法讀取設定檔")
	}

	client, db, err := config.SetupMongoConnection()
	if err != nil {
		panic("無法連接到資料庫")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := config.SetupRedisConnection()
	if err != nil {
		panic("無法連接到Redis")
	}
	defer rdb.Close()

	router := routers.SetupRouters(client, db, rdb, cfg)
	router.Run(":3000")
}

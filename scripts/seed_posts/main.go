package main

import (
	"context"
	"fmt"
	"log"

	"github.com/inkpost/internal/config"
	"github.com/inkpost/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// 测试数据生成器：向配置的存储写入示例文章
func main() {
	count := pflag.IntP("count", "n", 12, "number of sample posts to create")
	pflag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, closeStore, err := service.OpenPostStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to open post store: %v", err)
	}
	defer closeStore()

	ids, err := seedPosts(context.Background(), service.NewPostService(store, cfg.DefaultAuthor), *count)
	if err != nil {
		log.Fatalf("failed to seed posts: %v", err)
	}

	fmt.Printf("created %d sample posts\n", len(ids))
}

var sampleTags = []string{"go, backend", "rust", "go, tooling, cli", "life", "notes, go"}

func seedPosts(ctx context.Context, posts *service.PostService, count int) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		id, err := posts.Create(ctx, service.PostInput{
			Title:   fmt.Sprintf("Sample post #%d", i),
			Summary: fmt.Sprintf("A short summary for sample post %d.", i),
			Content: fmt.Sprintf("# Sample post #%d\n\nThis is **sample** content number %d.", i, i),
			Tags:    sampleTags[(i-1)%len(sampleTags)],
		})
		if err != nil {
			return ids, fmt.Errorf("create sample post %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

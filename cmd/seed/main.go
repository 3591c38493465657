// Command seed fills the blog database with fake users and posts.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Delete existing users and posts before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 uses the clock)")
	fast := flag.Bool("fast", false, "Skip bcrypt hashing of the demo password")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing to the database")
	flag.Parse()

	log.Printf("Target: %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Cached entries must not outlive a clean reseed.
	cache.InitRedis(cfg.RedisURL)
	defer cache.Close()

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		Factory: seed.FactoryOptions{
			RandSeed:   *randSeed,
			SkipBcrypt: *fast,
			DryRun:     *dryRun,
		},
	})

	res, err := s.Seed(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users and %d posts", len(res.Users), len(res.Posts))
	if !*fast {
		log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"talenthui-go-backend/pkg/adapter/repository/profilerepository"
	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/infrastructure/datastore"
	"talenthui-go-backend/pkg/usecase/usecase/importer"
	"talenthui-go-backend/pkg/util/location"
)

// The consolidated candidate importer. The ingestion mode that used to be
// nine separate scripts is a flag set here; -delete-email covers the one
// cleanup script that removed profiles by address.
//
// Usage: import [flags] <inputPath> [limit]
func main() {
	mode := flag.String("mode", "open", "location fallback mode: open or strict")
	conflictKey := flag.String("on-conflict", "username", "upsert conflict column; empty uses plain inserts")
	ignoreDuplicates := flag.Bool("ignore-duplicates", false, "skip conflicting rows instead of updating them")
	batchSize := flag.Int("batch-size", 100, "records per batch write")
	dedupStore := flag.Bool("dedup-store", true, "prefetch persisted identity keys and drop existing rows")
	suffix := flag.Bool("suffix-usernames", false, "disambiguate colliding usernames with numeric suffixes")
	bios := flag.Bool("bios", false, "synthesize bios for rows without one")
	deleteEmail := flag.String("delete-email", "", "remove profiles matching this email and exit")
	flag.Parse()

	args := flag.Args()
	if *deleteEmail == "" && len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: import [flags] <inputPath> [limit]")
		os.Exit(1)
	}

	limit := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "Invalid limit: %s\n", args[1])
			os.Exit(1)
		}
		limit = n
	}

	// Credentials may live in .env.local, as the admin tooling expects.
	_ = godotenv.Load(".env.local")

	pool, err := datastore.NewPoolFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *deleteEmail != "" {
		repo := profilerepository.NewProfileRepository(pool)
		removed, err := repo.DeleteByEmail(context.Background(), *deleteEmail)
		if err != nil {
			log.Fatalf("❌ Delete failed: %v", err)
		}
		fmt.Printf("🗑️  Removed %d profile(s) matching %s\n", removed, *deleteEmail)
		return
	}

	inputPath := args[0]

	file, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open %s: %v\n", inputPath, err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Println("🚀 TalentHui Candidate Import")
	fmt.Printf("📂 Reading: %s\n", inputPath)
	if limit > 0 {
		fmt.Printf("🎯 Limit: %d candidates\n", limit)
	}
	fmt.Println()

	repo := profilerepository.NewProfileRepository(pool)
	im := importer.NewImporter(repo, importer.Config{
		BatchSize:         *batchSize,
		Limit:             limit,
		LocationMode:      location.Mode(*mode),
		OnConflict:        *conflictKey,
		IgnoreDuplicates:  *ignoreDuplicates,
		DedupAgainstStore: *dedupStore,
		SuffixUsernames:   *suffix,
		SynthesizeBios:    *bios,
		DeterministicBios: true,
	})

	report, err := im.Run(context.Background(), file)
	if err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}

	fmt.Println("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✅ Successfully imported: %d candidates\n", report.Imported)
	fmt.Printf("📊 Eligible: %d\n", report.TotalEligible)
	if report.Duplicates > 0 {
		fmt.Printf("⚠️  Skipped (duplicates): %d\n", report.Duplicates)
	}
	if len(report.Skipped) > 0 {
		fmt.Printf("⚠️  Skipped rows: %d\n", len(report.Skipped))
		fmt.Printf("   • missing name: %d\n", report.SkipCount(model.SkipReasonMissingName))
		fmt.Printf("   • not in Hawaii: %d\n", report.SkipCount(model.SkipReasonNotInHawaii))
		fmt.Printf("   • no identity key: %d\n", report.SkipCount(model.SkipReasonNoIdentity))
	}
	for _, e := range report.Errors {
		fmt.Printf("❌ %s\n", e)
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if total, err := repo.Count(context.Background()); err == nil {
		fmt.Printf("📈 Profiles in store: %d\n", total)
	}
}

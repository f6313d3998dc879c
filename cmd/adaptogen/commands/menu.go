package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

const crawlPrompt = "this will crawl the storefront, continue? [y/N] "

// runMenu is what a bare invocation drops into, mirroring every
// subcommand as a numbered option.
func runMenu(ctx context.Context) {
	svc, cleanup := openService(ctx)
	defer cleanup()

	reader := bufio.NewReader(os.Stdin)
	for ctx.Err() == nil {
		fmt.Println()
		fmt.Println("adaptogen nutritional facts scraper")
		fmt.Println("  1) collect product urls")
		fmt.Println("  2) extract nutritional facts")
		fmt.Println("  3) full run (collect + extract)")
		fmt.Println("  4) list output files")
		fmt.Println("  5) clean output files")
		fmt.Println("  6) about")
		fmt.Println("  7) exit")
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		switch strings.TrimSpace(line) {
		case "1":
			if confirm(reader, crawlPrompt) {
				runCollect(ctx, svc)
			}
		case "2":
			collection, err := loadCollection(svc)
			if err != nil {
				fmt.Println(err)
				break
			}
			if confirm(reader, crawlPrompt) {
				runExtract(ctx, svc, collection)
			}
		case "3":
			if confirm(reader, crawlPrompt) {
				collection := runCollect(ctx, svc)
				runExtract(ctx, svc, collection)
			}
		case "4":
			renderFiles(svc)
		case "5":
			runClean(svc, reader, false)
		case "6":
			renderAbout(ctx, svc)
		case "7":
			return
		default:
			fmt.Println("enter a number between 1 and 7")
		}
	}
}

func confirm(reader *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

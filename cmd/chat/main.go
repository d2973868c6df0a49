package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"ai-library-be/internal/bootstrap"
	"ai-library-be/internal/config"
	"ai-library-be/internal/dto"
)

// Interactive terminal client for trying the assistant without the HTTP
// server.
func main() {
	cfg := config.Load()

	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap application: %v", err)
	}
	defer container.Logger.Sync()

	svc := container.ChatService
	suggestions := svc.Suggest(context.Background()).Questions

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("AI Library RAG Chatbot")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Gõ 'exit' để thoát")
	fmt.Println()
	fmt.Println("Gợi ý câu hỏi:")
	for i, q := range suggestions {
		fmt.Printf("  %d. %s\n", i+1, q)
	}
	fmt.Printf("\nBạn có thể nhập số (1-%d) hoặc gõ câu hỏi riêng.\n\n", len(suggestions))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Ban: ")
		if !scanner.Scan() {
			fmt.Println("\nThoát...")
			return
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "exit", "quit", "q":
			fmt.Println("Tạm biệt!")
			return
		}

		if n, err := strconv.Atoi(question); err == nil {
			if n < 1 || n > len(suggestions) {
				fmt.Printf("Số không hợp lệ. Vui lòng chọn từ 1-%d.\n", len(suggestions))
				continue
			}
			question = suggestions[n-1]
			fmt.Printf(">> Bạn chọn: %s\n", question)
		}

		resp := svc.GenerateAnswer(context.Background(), &dto.ChatRequest{
			Question:  question,
			SessionID: "cli",
		})
		fmt.Printf("\n[%s]\n%s\n\n", resp.Intent, resp.Answer)
	}
}

// Package vaultsdk provides the request/response types for the PromptVault
// HTTP API together with a small Go client. The server handlers use the same
// types to build responses, so the SDK and the service can never drift apart.
//
// The client carries a cookie jar: authentication is a session cookie set by
// Login and sent automatically on every subsequent request.
//
// Basic usage:
//
//	client, err := vaultsdk.NewClient("http://localhost:8080")
//	if err != nil { ... }
//
//	_, err = client.Register(ctx, vaultsdk.RegisterRequest{
//		Username: "alice",
//		Email:    "alice@example.com",
//		Password: "S3cure!pass",
//	})
//
//	_, err = client.Login(ctx, vaultsdk.LoginRequest{
//		Username: "alice",
//		Password: "S3cure!pass",
//	})
//
//	saved, err := client.SavePrompt(ctx, vaultsdk.SavePromptRequest{
//		OriginalPrompt: "write a poem",
//		EnhancedPrompt: "write a four stanza poem about the sea",
//	})
package vaultsdk

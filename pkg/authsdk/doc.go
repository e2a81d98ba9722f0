/*
Package authsdk provides the wire types and a Go client for the TweetBook
identity service.

# Client

	client := authsdk.NewClient("http://localhost:8080")

	pair, err := client.Register(ctx, authsdk.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Secret123!",
	})

	// Access tokens are short lived. Once one has expired, trade it and its
	// refresh token for a new pair. A refresh token works exactly once.
	pair, err = client.Refresh(ctx, authsdk.RefreshRequest{
		Token:        pair.Token,
		RefreshToken: pair.RefreshToken,
	})

Post calls take the access token explicitly:

	post, err := client.CreatePost(ctx, pair.Token, authsdk.CreatePostRequest{Name: "hello"})

# Error Handling

Every non-2xx response is returned as an *APIError holding the status code
and the error messages from the body:

	_, err := client.Login(ctx, req)
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) {
		fmt.Println(apiErr.StatusCode, apiErr.Errors)
	}
*/
package authsdk

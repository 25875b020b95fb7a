// Package vk is a small client for the VK API methods the backup needs:
// users.get, photos.get, status.get and friends.getMutual.
//
// A Client exists only after its token passed a users.get check, so methods
// never run against a half-configured client:
//
//	client, err := vk.New(vk.Config{Token: token, UserID: "1"}, log)
//	if err != nil {
//		return err // errors.ErrorTypeNotInitialized with the API message
//	}
//	photos := paginate.Photos(client.PhotoFetcher("", vk.AlbumProfile), 50)
//
// Every method returns a response.Envelope. API-level failures
// ({"error": {"error_msg": ...}}) surface as "API error: <error_msg>".
//
// Tokens are obtained in a browser through the implicit flow started by
// AuthLink; this package does not run that flow itself.
package vk

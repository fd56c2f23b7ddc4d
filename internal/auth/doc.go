// Package auth implements operator authentication for the admin API.
//
// Two modes are supported, selected via AUTH_MODE:
//
//   - none (default): every request runs as the default operator. Suitable
//     for single-operator deployments behind a trusted network.
//   - local: operators live in the local database. Browser clients use a
//     session cookie (scs with an SQLite store); API clients send
//     "Authorization: Token <hex>" with a per-user API token. Passwords are
//     bcrypt hashes, tokens are stored as SHA-256 hashes.
//
// Cookie-authenticated mutations are additionally protected with CSRF
// tokens (gorilla/csrf); token-authenticated API calls skip the CSRF check
// because the token itself cannot be sent by a cross-site form.
package auth

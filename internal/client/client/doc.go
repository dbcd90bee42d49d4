// Package client contains the client-side building blocks of the Conciencia
// CLI.
//
// # Overview
//
//  1. Client, the contract the CLI services use to reach the server.
//  2. GRPCClient, its gRPC implementation. It dials with the JSON codec,
//     injects the access token through an interceptor, refreshes an expired
//     token once per call and maps gRPC status codes to sentinel errors.
//  3. InitDatabase and RunMigrations, which open the local SQLite state and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Transport conditions surface as ErrUnavailable, ErrUnauthorized and
// ErrSessionExpired. Domain failures come back as the common sentinels
// (common.ErrorNotFound, common.ErrorValidation, common.ErrorAlreadyExists)
// wrapped with the server message, so callers match them with errors.Is.
package client

// Package reqres provides an HTTP client for the reqres.in demo user API.
//
// # Overview
//
// This package issues the two requests userdesk needs (create user, fetch
// user), decodes their JSON payloads, and classifies every failure into a
// RequestError so the view-state store can show one message per failure.
//
// # Architecture
//
//   - client.go: Client, the generic Do request function, failure classification
//   - errors.go: RequestError taxonomy and sentinels
//   - types.go: Wire types mirroring the reqres schema
//   - service.go: UserService, the domain operations built on Do
//
// # Client Usage
//
//	client, err := reqres.NewClient("", reqres.WithConnectivity(monitor))
//	if err != nil {
//		return err
//	}
//	users := reqres.NewUserService(client, 0)
//
//	user, err := users.FetchUser(ctx, 2)
//	if err != nil {
//		if reqErr, ok := reqres.AsRequestError(err); ok {
//			log.Printf("fetch failed: %s", reqErr.Kind)
//		}
//	}
//
// # API Endpoints
//
//   - GET /users/{id}: {data: {id,email,first_name,last_name,avatar}, support: {url,text}}
//   - POST /users: body {name, email}, returns {name, email|job, id, createdAt}
//
// # Error Classification
//
// Do returns exactly one of:
//
//   - InvalidURL: base URL or request path could not be built
//   - NoConnectivity: the connectivity source reports offline (no request is
//     sent), or the transport reports an unreachable network
//   - Timeout: the per-call deadline expired
//   - ServerError(code): 401, 404, or any 5xx
//   - InvalidResponse: any other non-2xx status
//   - InvalidData: a 2xx body that does not decode into the target type
//   - Transport(detail): every other transport failure
//
// RequestError values compare structurally through errors.Is:
//
//	errors.Is(err, reqres.ServerError(404))   // true for any 404
//	errors.Is(err, reqres.ErrNoConnectivity)  // true when offline
//
// # Created User Decoding
//
// The create endpoint echoes whatever fields it received, and older
// deployments answered with a job field instead of email. CreatedUserRecord
// accepts either; when only job is present Email holds the same string.
// When neither is present both are nil.
//
// # Request Handling
//
// All requests:
//   - Carry Content-Type and Accept: application/json
//   - Include User-Agent: userdesk/0.1 and, when configured, x-api-key
//   - Carry a fresh X-Request-Id UUID, repeated as request_id in the logs
//   - Run under a per-call timeout (default 30 seconds)
//   - Optionally wait on a token bucket limiter (WithRateLimit)
//
// # Design Rationale
//
//   - No retries (the store decides what a failure means to the user)
//   - No caching (every invocation is a fresh request)
//   - No cancellation on reconnect (stale results are dropped by the store)
package reqres

// Package http implements the HTTP request handlers of the dataclean service.
// Handlers are a thin layer between the HTTP transport and the services
// package: they parse and validate the request, call a service, and format
// the response.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → CleaningService → cleaner
//	                                              ↓
//	HTTP Response ← Handler ← Result ←───────────┘
//
// # Endpoints
//
//	POST /api/clean          multipart "file" → {"report": ..., "data": [...]}
//	POST /api/validate       multipart "file" → report
//	POST /api/clean/json     {"records": [...]} → {"report": ..., "data": [...]}
//	POST /api/validate/json  {"records": [...]} → report
//
// The clean endpoints accept ?format=csv, in which case the cleaned data is
// written as text/csv and the report travels in the X-Validation-Report
// header.
//
// # Error Handling
//
// Service errors are translated into APIErrors and rendered as RFC 7807
// problem documents by the shared ErrorHandler:
//
//	{
//	    "type": "/errors/unsupported-format",
//	    "title": "Unsupported Media Type",
//	    "status": 415,
//	    "detail": "Unsupported file format",
//	    "instance": "/api/clean"
//	}
package http

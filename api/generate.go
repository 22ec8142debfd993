package api

//go:generate go tool oapi-codegen -generate types -o types.gen.go -package=api api.yaml
//go:generate go tool oapi-codegen -generate chi-server -o server.gen.go -package=api api.yaml
//go:generate go tool oapi-codegen -generate spec -o spec.gen.go -package=api api.yaml

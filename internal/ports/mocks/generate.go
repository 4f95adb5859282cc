//go:generate mockgen -source=../remote_store.go -destination=./mock_remote_store.go -package=mocks
//go:generate mockgen -source=../result_cache.go -destination=./mock_result_cache.go -package=mocks
//go:generate mockgen -source=../renderer.go     -destination=./mock_renderer.go     -package=mocks
//go:generate mockgen -source=../secret_store.go -destination=./mock_secret_store.go -package=mocks
//go:generate mockgen -source=../logger.go       -destination=./mock_logger.go       -package=mocks

package mocks

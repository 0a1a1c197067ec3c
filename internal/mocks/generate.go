package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProviderAPI --dir ../usecase --output usecase --outpkg usecasemock --filename provider_api_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OAuthExchanger --dir ../usecase --output usecase --outpkg usecasemock --filename oauth_exchanger_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/credential --output domain/credential --outpkg credentialmock --filename repository_mock.go

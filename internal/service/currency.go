package service

import (
	"paygate/internal/domain"

	"github.com/gagliardetto/solana-go"
)

// known stablecoin mints per network
var stablecoinMints = map[domain.Network]map[string]domain.Currency{
	domain.NETWORK_MAINNET: {
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": domain.CURRENCY_USDC,
		"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": domain.CURRENCY_USDT,
	},
	domain.NETWORK_DEVNET: {
		"4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU": domain.CURRENCY_USDC,
		"EJwZgeZrdC8TXTQbQBoL6bfuAnFUUy1PVCMB4DYPzVaS": domain.CURRENCY_USDT,
	},
}

// ResolveCurrency maps a mint address to a known stablecoin on the given
// network. Malformed addresses resolve to unknown, never an error, so the
// reconciliation loop proceeds without currency tagging.
func ResolveCurrency(network domain.Network, mint string) domain.Currency {
	pk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return domain.CURRENCY_UNKNOWN
	}

	return stablecoinMints[network][pk.String()]
}

// NetworkFromEnv derives the network from the payment token's environment,
// falling back to the deployment mode when the environment is absent.
func NetworkFromEnv(tokenEnv string, prodEnv bool) domain.Network {
	switch tokenEnv {
	case domain.TOKEN_ENV_LIVE:
		return domain.NETWORK_MAINNET
	case domain.TOKEN_ENV_TEST:
		return domain.NETWORK_DEVNET
	}

	if prodEnv {
		return domain.NETWORK_MAINNET
	}
	return domain.NETWORK_DEVNET
}

package domain

type Network uint8

const (
	NETWORK_MAINNET Network = iota
	NETWORK_DEVNET
)

var Networks = [...]string{"mainnet", "devnet"}

func (n Network) ToString() string {
	return Networks[n]
}

func StrToNetwork(s string) Network {
	for i, networkName := range Networks {
		if s == networkName {
			return Network(i)
		}
	}
	return NETWORK_MAINNET
}

const (
	TOKEN_ENV_TEST = "TEST"
	TOKEN_ENV_LIVE = "LIVE"
)

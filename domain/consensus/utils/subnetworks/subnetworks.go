package subnetworks

import (
	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
)

// IsBuiltIn returns true if the subnetwork is a built in subnetwork, which
// means all nodes, including partial nodes, must validate it, and its transactions
// always use 0 gas.
func IsBuiltIn(id externalapi.DomainSubnetworkID) bool {
	return id == externalapi.SubnetworkIDCoinbase || id == externalapi.SubnetworkIDRegistry
}

// IsBuiltInOrNative returns true if the subnetwork is the native or a built in subnetwork,
// see IsBuiltIn for further details
func IsBuiltInOrNative(id externalapi.DomainSubnetworkID) bool {
	return id == externalapi.SubnetworkIDNative || IsBuiltIn(id)
}

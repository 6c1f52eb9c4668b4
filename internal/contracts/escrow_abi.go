package contracts

// EscrowABI covers the escrow functions the relay encodes or inspects.
const EscrowABI = `[
  {
    "type": "function",
    "name": "createTransfer",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "transferId", "type": "bytes32"},
      {"name": "principal", "type": "uint256"},
      {"name": "sponsorFee", "type": "uint256"},
      {"name": "expiry", "type": "uint64"},
      {"name": "recipientHintHash", "type": "bytes32"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "claimToWallet",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "transferId", "type": "bytes32"},
      {"name": "recipient", "type": "address"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "claimToPayoutTreasury",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "transferId", "type": "bytes32"}
    ],
    "outputs": []
  }
]`

const (
	MethodCreateTransfer        = "createTransfer"
	MethodClaimToWallet         = "claimToWallet"
	MethodClaimToPayoutTreasury = "claimToPayoutTreasury"
)

package main

import (
	"log"
	"os"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/chaincode"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
)

func main() {
	appLogger := logger.NewZapLogger(logger.Options{
		Production: true,
		Level:      os.Getenv("CORE_CHAINCODE_LOGLEVEL"),
		Service:    "credit-ledger-chaincode",
	})
	defer appLogger.Flush()

	cc, err := contractapi.NewChaincode(
		chaincode.NewRecordContract(appLogger),
		chaincode.NewLedgerContract(appLogger),
	)
	if err != nil {
		log.Panicf("Error creating credit ledger chaincode: %v", err)
	}
	cc.DefaultContract = chaincode.LedgerContractName

	if err := cc.Start(); err != nil {
		log.Panicf("Error starting credit ledger chaincode: %v", err)
	}
}

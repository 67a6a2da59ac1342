package hci

// Opcode Group Fields in use by this client (spec.md §3). The Bluetooth
// Core Specification defines more (Link Policy, Testing, Vendor). This
// client constructs commands in the CB, Information, Status and LE groups;
// ogfLinkControl is defined but no Link Control command is implemented.
const (
	ogfLinkControl = 0x01
	ogfCB          = 0x03 // Controller & Baseband
	ogfInfoParams  = 0x04
	ogfStatusParams = 0x05
	ogfLE          = 0x08
)

// opcode is the 16-bit command identifier carried in every HCI command
// packet: a 6-bit OGF in the upper bits and a 10-bit OCF in the lower bits
// (spec.md §3 "Opcode").
type opcode uint16

func makeOpcode(ogf uint8, ocf uint16) opcode {
	return opcode(uint16(ogf)<<10 | (ocf & 0x03ff))
}

func (op opcode) ogf() uint8  { return uint8(op >> 10) }
func (op opcode) ocf() uint16 { return uint16(op) & 0x03ff }

func (op opcode) String() string {
	if name, ok := opcodeName[op]; ok {
		return name
	}
	return "Unknown HCI Command"
}

// Controller & Baseband (OGF 0x03)
const (
	opSetEventMask          = opcode(ogfCB<<10 | 0x0001)
	opReset                 = opcode(ogfCB<<10 | 0x0003)
	opSetControllerToHostFC = opcode(ogfCB<<10 | 0x0031)
	opHostBufferSize        = opcode(ogfCB<<10 | 0x0033)
	opHostNumCompletedPkts  = opcode(ogfCB<<10 | 0x0035)
	opSetEventMaskPage2     = opcode(ogfCB<<10 | 0x0063)
	opWriteLEHostSupported  = opcode(ogfCB<<10 | 0x006d)
)

// Information Parameters (OGF 0x04)
const (
	opReadLocalVersionInformation = opcode(ogfInfoParams<<10 | 0x0001)
	opReadLocalSupportedCommands = opcode(ogfInfoParams<<10 | 0x0002)
	opReadLocalSupportedFeatures = opcode(ogfInfoParams<<10 | 0x0003)
	opReadBufferSize              = opcode(ogfInfoParams<<10 | 0x0005)
	opReadBdAddr                  = opcode(ogfInfoParams<<10 | 0x0009)
)

// Status Parameters (OGF 0x05)
const (
	opReadRSSI = opcode(ogfStatusParams<<10 | 0x0005)
)

// LE Controller (OGF 0x08)
const (
	opLESetEventMask                         = opcode(ogfLE<<10 | 0x0001)
	opLEReadBufferSize                       = opcode(ogfLE<<10 | 0x0002)
	opLEReadLocalSupportedFeatures           = opcode(ogfLE<<10 | 0x0003)
	opLESetRandomAddress                     = opcode(ogfLE<<10 | 0x0005)
	opLESetAdvertisingParameters             = opcode(ogfLE<<10 | 0x0006)
	opLEReadAdvertisingChannelTxPower        = opcode(ogfLE<<10 | 0x0007)
	opLESetAdvertisingData                   = opcode(ogfLE<<10 | 0x0008)
	opLESetScanResponseData                  = opcode(ogfLE<<10 | 0x0009)
	opLESetAdvertisingEnable                 = opcode(ogfLE<<10 | 0x000a)
	opLESetScanParameters                    = opcode(ogfLE<<10 | 0x000b)
	opLESetScanEnable                        = opcode(ogfLE<<10 | 0x000c)
	opLECreateConnection                     = opcode(ogfLE<<10 | 0x000d)
	opLECreateConnectionCancel               = opcode(ogfLE<<10 | 0x000e)
	opLEReadFilterAcceptListSize              = opcode(ogfLE<<10 | 0x000f)
	opLEClearFilterAcceptList                 = opcode(ogfLE<<10 | 0x0010)
	opLEAddDeviceToFilterAcceptList           = opcode(ogfLE<<10 | 0x0011)
	opLERemoveDeviceFromFilterAcceptList      = opcode(ogfLE<<10 | 0x0012)
	opLEConnectionUpdate                      = opcode(ogfLE<<10 | 0x0013)
	opLESetHostChannelClassification          = opcode(ogfLE<<10 | 0x0014)
	opLEReadChannelMap                        = opcode(ogfLE<<10 | 0x0015)
	opLEReadRemoteFeatures                    = opcode(ogfLE<<10 | 0x0016)
	opLEEncrypt                               = opcode(ogfLE<<10 | 0x0017)
	opLERand                                  = opcode(ogfLE<<10 | 0x0018)
	opLEStartEncryption                       = opcode(ogfLE<<10 | 0x0019)
	opLELongTermKeyRequestReply               = opcode(ogfLE<<10 | 0x001a)
	opLELongTermKeyRequestNegativeReply       = opcode(ogfLE<<10 | 0x001b)
	opLEReadSupportedStates                   = opcode(ogfLE<<10 | 0x001c)
	opLEReceiverTest                          = opcode(ogfLE<<10 | 0x001d)
	opLETransmitterTest                       = opcode(ogfLE<<10 | 0x001e)
	opLETestEnd                               = opcode(ogfLE<<10 | 0x001f)
	opLERemoteConnectionParameterReply        = opcode(ogfLE<<10 | 0x0020)
	opLERemoteConnectionParameterNegativeReply = opcode(ogfLE<<10 | 0x0021)
	opLESetDataLength                         = opcode(ogfLE<<10 | 0x0022)
	opLEReadSuggestedDefaultDataLength        = opcode(ogfLE<<10 | 0x0023)
	opLEWriteSuggestedDefaultDataLength       = opcode(ogfLE<<10 | 0x0024)
	opLEAddDeviceToResolvingList               = opcode(ogfLE<<10 | 0x0027)
	opLERemoveDeviceFromResolvingList          = opcode(ogfLE<<10 | 0x0028)
	opLEClearResolvingList                     = opcode(ogfLE<<10 | 0x0029)
	opLEReadResolvingListSize                  = opcode(ogfLE<<10 | 0x002a)
	opLESetAddressResolutionEnable             = opcode(ogfLE<<10 | 0x002d)
	opLESetResolvablePrivateAddressTimeout     = opcode(ogfLE<<10 | 0x002e)
	opLEReadMaximumDataLength                  = opcode(ogfLE<<10 | 0x002f)
	opLEReadPHY                                = opcode(ogfLE<<10 | 0x0030)
	opLESetDefaultPHY                          = opcode(ogfLE<<10 | 0x0031)
	opLESetPHY                                 = opcode(ogfLE<<10 | 0x0032)
	opLESetAdvertisingSetRandomAddress         = opcode(ogfLE<<10 | 0x0035)
	opLESetExtendedAdvertisingParameters       = opcode(ogfLE<<10 | 0x0036)
	opLESetExtendedAdvertisingData             = opcode(ogfLE<<10 | 0x0037)
	opLESetExtendedScanResponseData            = opcode(ogfLE<<10 | 0x0038)
	opLESetExtendedAdvertisingEnable           = opcode(ogfLE<<10 | 0x0039)
	opLEReadMaximumAdvertisingDataLength       = opcode(ogfLE<<10 | 0x003a)
	opLEReadNumberOfSupportedAdvertisingSets   = opcode(ogfLE<<10 | 0x003b)
	opLERemoveAdvertisingSet                   = opcode(ogfLE<<10 | 0x003c)
	opLEClearAdvertisingSets                   = opcode(ogfLE<<10 | 0x003d)
	opLESetExtendedScanParameters              = opcode(ogfLE<<10 | 0x0041)
	opLESetExtendedScanEnable                  = opcode(ogfLE<<10 | 0x0042)
	opLEExtendedCreateConnection               = opcode(ogfLE<<10 | 0x0043)
	opLEReadTransmitPower                      = opcode(ogfLE<<10 | 0x004b)
	opLESetPrivacyMode                         = opcode(ogfLE<<10 | 0x004e)
)

var opcodeName = map[opcode]string{
	opSetEventMask:                "Set Event Mask",
	opReset:                       "Reset",
	opSetControllerToHostFC:       "Set Controller To Host Flow Control",
	opHostBufferSize:              "Host Buffer Size",
	opHostNumCompletedPkts:        "Host Number Of Completed Packets",
	opSetEventMaskPage2:           "Set Event Mask Page 2",
	opWriteLEHostSupported:        "Write LE Host Supported",
	opReadLocalVersionInformation: "Read Local Version Information",
	opReadLocalSupportedCommands:  "Read Local Supported Commands",
	opReadLocalSupportedFeatures:  "Read Local Supported Features",
	opReadBufferSize:              "Read Buffer Size",
	opReadBdAddr:                  "Read BD_ADDR",
	opReadRSSI:                    "Read RSSI",

	opLESetEventMask:                    "LE Set Event Mask",
	opLEReadBufferSize:                  "LE Read Buffer Size",
	opLEReadLocalSupportedFeatures:      "LE Read Local Supported Features",
	opLESetRandomAddress:                "LE Set Random Address",
	opLESetAdvertisingParameters:        "LE Set Advertising Parameters",
	opLEReadAdvertisingChannelTxPower:   "LE Read Advertising Channel Tx Power",
	opLESetAdvertisingData:              "LE Set Advertising Data",
	opLESetScanResponseData:             "LE Set Scan Response Data",
	opLESetAdvertisingEnable:            "LE Set Advertising Enable",
	opLESetScanParameters:               "LE Set Scan Parameters",
	opLESetScanEnable:                   "LE Set Scan Enable",
	opLECreateConnection:                "LE Create Connection",
	opLECreateConnectionCancel:          "LE Create Connection Cancel",
	opLEReadFilterAcceptListSize:        "LE Read Filter Accept List Size",
	opLEClearFilterAcceptList:           "LE Clear Filter Accept List",
	opLEAddDeviceToFilterAcceptList:     "LE Add Device To Filter Accept List",
	opLERemoveDeviceFromFilterAcceptList: "LE Remove Device From Filter Accept List",
	opLEConnectionUpdate:                "LE Connection Update",
	opLESetHostChannelClassification:    "LE Set Host Channel Classification",
	opLEReadChannelMap:                  "LE Read Channel Map",
	opLEReadRemoteFeatures:              "LE Read Remote Features",
	opLEEncrypt:                         "LE Encrypt",
	opLERand:                            "LE Rand",
	opLEStartEncryption:                 "LE Start Encryption",
	opLELongTermKeyRequestReply:         "LE Long Term Key Request Reply",
	opLELongTermKeyRequestNegativeReply: "LE Long Term Key Request Negative Reply",
	opLEReadSupportedStates:             "LE Read Supported States",
	opLEReceiverTest:                    "LE Receiver Test",
	opLETransmitterTest:                 "LE Transmitter Test",
	opLETestEnd:                         "LE Test End",
	opLERemoteConnectionParameterReply:         "LE Remote Connection Parameter Request Reply",
	opLERemoteConnectionParameterNegativeReply: "LE Remote Connection Parameter Request Negative Reply",
	opLESetDataLength:                   "LE Set Data Length",
	opLEReadSuggestedDefaultDataLength:  "LE Read Suggested Default Data Length",
	opLEWriteSuggestedDefaultDataLength: "LE Write Suggested Default Data Length",
	opLEAddDeviceToResolvingList:        "LE Add Device To Resolving List",
	opLERemoveDeviceFromResolvingList:   "LE Remove Device From Resolving List",
	opLEClearResolvingList:              "LE Clear Resolving List",
	opLEReadResolvingListSize:           "LE Read Resolving List Size",
	opLESetAddressResolutionEnable:      "LE Set Address Resolution Enable",
	opLESetResolvablePrivateAddressTimeout: "LE Set Resolvable Private Address Timeout",
	opLEReadMaximumDataLength:           "LE Read Maximum Data Length",
	opLEReadPHY:                         "LE Read PHY",
	opLESetDefaultPHY:                   "LE Set Default PHY",
	opLESetPHY:                          "LE Set PHY",
	opLESetAdvertisingSetRandomAddress:  "LE Set Advertising Set Random Address",
	opLESetExtendedAdvertisingParameters: "LE Set Extended Advertising Parameters",
	opLESetExtendedAdvertisingData:      "LE Set Extended Advertising Data",
	opLESetExtendedScanResponseData:     "LE Set Extended Scan Response Data",
	opLESetExtendedAdvertisingEnable:    "LE Set Extended Advertising Enable",
	opLEReadMaximumAdvertisingDataLength: "LE Read Maximum Advertising Data Length",
	opLEReadNumberOfSupportedAdvertisingSets: "LE Read Number of Supported Advertising Sets",
	opLERemoveAdvertisingSet:            "LE Remove Advertising Set",
	opLEClearAdvertisingSets:            "LE Clear Advertising Sets",
	opLESetExtendedScanParameters:       "LE Set Extended Scan Parameters",
	opLESetExtendedScanEnable:           "LE Set Extended Scan Enable",
	opLEExtendedCreateConnection:        "LE Extended Create Connection",
	opLEReadTransmitPower:               "LE Read Transmit Power",
	opLESetPrivacyMode:                  "LE Set Privacy Mode",
}

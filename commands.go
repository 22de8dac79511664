package cat

// CommandID is the stable identity of a CAT command. Handlers are selected by
// CommandID once a frame has been matched, never by comparing strings.
type CommandID uint8

// Yaesu CAT command identities, in mnemonic order.
const (
	CmdAB CommandID = iota
	CmdAC
	CmdAG
	CmdAI
	CmdAM
	CmdAN
	CmdAO
	CmdAV
	CmdBA
	CmdBC
	CmdBD
	CmdBI
	CmdBM
	CmdBP
	CmdBS
	CmdBU
	CmdBY
	CmdCH
	CmdCN
	CmdCO
	CmdCS
	CmdCT
	CmdDA
	CmdDN
	CmdDT
	CmdED
	CmdEM
	CmdEN
	CmdEU
	CmdEX
	CmdFA
	CmdFB
	CmdFN
	CmdFR
	CmdFS
	CmdFT
	CmdGT
	CmdID
	CmdIF
	CmdIS
	CmdKM
	CmdKP
	CmdKR
	CmdKS
	CmdKY
	CmdLK
	CmdLM
	CmdMA
	CmdMB
	CmdMC
	CmdMD
	CmdMG
	CmdML
	CmdMR
	CmdMS
	CmdMT
	CmdMW
	CmdMX
	CmdNA
	CmdNB
	CmdNL
	CmdNR
	CmdOI
	CmdOS
	CmdPA
	CmdPB
	CmdPC
	CmdPL
	CmdPR
	CmdPS
	CmdQI
	CmdQR
	CmdQS
	CmdRA
	CmdRC
	CmdRD
	CmdRF
	CmdRG
	CmdRI
	CmdRL
	CmdRM
	CmdRS
	CmdRT
	CmdRU
	CmdSC
	CmdSD
	CmdSF
	CmdSH
	CmdSM
	CmdSQ
	CmdSS
	CmdST
	CmdSV
	CmdSY
	CmdTX
	CmdUL
	CmdUP
	CmdVD
	CmdVG
	CmdVM
	CmdVS
	CmdVT
	CmdVX
	CmdXT
	CmdZI
)

// FrequencyDigits is the parameter length of the FA and FB set commands:
// nine zero-padded digits of frequency in Hz.
const FrequencyDigits = 9

var yaesuCommands = []Descriptor{
	{Mnemonic: "AB", ID: CmdAB, Contract: Variable, Description: "Main band to sub band"},
	{Mnemonic: "AC", ID: CmdAC, Contract: Variable, Description: "Antenna tuner control"},
	{Mnemonic: "AG", ID: CmdAG, Contract: Variable, Description: "AF gain"},
	{Mnemonic: "AI", ID: CmdAI, Contract: Variable, Description: "Auto information"},
	{Mnemonic: "AM", ID: CmdAM, Contract: Variable, Description: "Main band to memory channel"},
	{Mnemonic: "AN", ID: CmdAN, Contract: Variable, Description: "Antenna number"},
	{Mnemonic: "AO", ID: CmdAO, Contract: Variable, Description: "AMC output level"},
	{Mnemonic: "AV", ID: CmdAV, Contract: Variable, Description: "Anti VOX level"},
	{Mnemonic: "BA", ID: CmdBA, Contract: Variable, Description: "Sub band to main band"},
	{Mnemonic: "BC", ID: CmdBC, Contract: Variable, Description: "Auto notch"},
	{Mnemonic: "BD", ID: CmdBD, Contract: Variable, Description: "Band down"},
	{Mnemonic: "BI", ID: CmdBI, Contract: Variable, Description: "Break-in"},
	{Mnemonic: "BM", ID: CmdBM, Contract: Variable, Description: "Sub band to memory channel"},
	{Mnemonic: "BP", ID: CmdBP, Contract: Variable, Description: "Manual notch"},
	{Mnemonic: "BS", ID: CmdBS, Contract: Variable, Description: "Band select"},
	{Mnemonic: "BU", ID: CmdBU, Contract: Variable, Description: "Band up"},
	{Mnemonic: "BY", ID: CmdBY, Contract: Variable, Description: "Busy"},
	{Mnemonic: "CH", ID: CmdCH, Contract: Variable, Description: "Channel up/down"},
	{Mnemonic: "CN", ID: CmdCN, Contract: Variable, Description: "CTCSS/DCS number"},
	{Mnemonic: "CO", ID: CmdCO, Contract: Variable, Description: "Contour"},
	{Mnemonic: "CS", ID: CmdCS, Contract: Variable, Description: "CW spot"},
	{Mnemonic: "CT", ID: CmdCT, Contract: Variable, Description: "CTCSS"},
	{Mnemonic: "DA", ID: CmdDA, Contract: Variable, Description: "Dimmer"},
	{Mnemonic: "DN", ID: CmdDN, Contract: Variable, Description: "Down"},
	{Mnemonic: "DT", ID: CmdDT, Contract: Variable, Description: "Date and time"},
	{Mnemonic: "ED", ID: CmdED, Contract: Variable, Description: "Encoder down"},
	{Mnemonic: "EM", ID: CmdEM, Contract: Variable, Description: "Encode memory"},
	{Mnemonic: "EN", ID: CmdEN, Contract: Variable, Description: "Encode"},
	{Mnemonic: "EU", ID: CmdEU, Contract: Variable, Description: "Encoder up"},
	{Mnemonic: "EX", ID: CmdEX, Contract: Variable, Description: "Menu"},
	{Mnemonic: "FA", ID: CmdFA, Contract: Exact(FrequencyDigits), Description: "Frequency main band"},
	{Mnemonic: "FB", ID: CmdFB, Contract: Exact(FrequencyDigits), Description: "Frequency sub band"},
	{Mnemonic: "FN", ID: CmdFN, Contract: Variable, Description: "Fine tuning"},
	{Mnemonic: "FR", ID: CmdFR, Contract: Variable, Description: "Function RX"},
	{Mnemonic: "FS", ID: CmdFS, Contract: Variable, Description: "Fast step"},
	{Mnemonic: "FT", ID: CmdFT, Contract: Variable, Description: "Function TX"},
	{Mnemonic: "GT", ID: CmdGT, Contract: Variable, Description: "AGC function"},
	{Mnemonic: "ID", ID: CmdID, Contract: Variable, Description: "Identification"},
	{Mnemonic: "IF", ID: CmdIF, Contract: Variable, Description: "Information"},
	{Mnemonic: "IS", ID: CmdIS, Contract: Variable, Description: "IF-shift"},
	{Mnemonic: "KM", ID: CmdKM, Contract: Variable, Description: "Keyer memory"},
	{Mnemonic: "KP", ID: CmdKP, Contract: Variable, Description: "Key pitch"},
	{Mnemonic: "KR", ID: CmdKR, Contract: Variable, Description: "Keyer"},
	{Mnemonic: "KS", ID: CmdKS, Contract: Variable, Description: "Key speed"},
	{Mnemonic: "KY", ID: CmdKY, Contract: Variable, Description: "CW keying"},
	{Mnemonic: "LK", ID: CmdLK, Contract: Variable, Description: "Lock"},
	{Mnemonic: "LM", ID: CmdLM, Contract: Variable, Description: "Load message"},
	{Mnemonic: "MA", ID: CmdMA, Contract: Variable, Description: "Memory channel to main band"},
	{Mnemonic: "MB", ID: CmdMB, Contract: Variable, Description: "Memory channel to sub band"},
	{Mnemonic: "MC", ID: CmdMC, Contract: Variable, Description: "Memory channel"},
	{Mnemonic: "MD", ID: CmdMD, Contract: Variable, Description: "Mode"},
	{Mnemonic: "MG", ID: CmdMG, Contract: Variable, Description: "Mic gain"},
	{Mnemonic: "ML", ID: CmdML, Contract: Variable, Description: "Monitor level"},
	{Mnemonic: "MR", ID: CmdMR, Contract: Variable, Description: "Memory read"},
	{Mnemonic: "MS", ID: CmdMS, Contract: Variable, Description: "Meter switch"},
	{Mnemonic: "MT", ID: CmdMT, Contract: Variable, Description: "Memory channel write/tag"},
	{Mnemonic: "MW", ID: CmdMW, Contract: Variable, Description: "Memory write"},
	{Mnemonic: "MX", ID: CmdMX, Contract: Variable, Description: "MOX set"},
	{Mnemonic: "NA", ID: CmdNA, Contract: Variable, Description: "Narrow"},
	{Mnemonic: "NB", ID: CmdNB, Contract: Variable, Description: "Noise blanker"},
	{Mnemonic: "NL", ID: CmdNL, Contract: Variable, Description: "Noise blanker level"},
	{Mnemonic: "NR", ID: CmdNR, Contract: Variable, Description: "Noise reduction"},
	{Mnemonic: "OI", ID: CmdOI, Contract: Variable, Description: "Opposite band information"},
	{Mnemonic: "OS", ID: CmdOS, Contract: Variable, Description: "Offset (Repeater Shift)"},
	{Mnemonic: "PA", ID: CmdPA, Contract: Variable, Description: "Pre-amp (IPO)"},
	{Mnemonic: "PB", ID: CmdPB, Contract: Variable, Description: "Play back"},
	{Mnemonic: "PC", ID: CmdPC, Contract: Variable, Description: "Power control"},
	{Mnemonic: "PL", ID: CmdPL, Contract: Variable, Description: "Speech processor level"},
	{Mnemonic: "PR", ID: CmdPR, Contract: Variable, Description: "Speech processor"},
	{Mnemonic: "PS", ID: CmdPS, Contract: Variable, Description: "Power switch"},
	{Mnemonic: "QI", ID: CmdQI, Contract: Variable, Description: "QMB store"},
	{Mnemonic: "QR", ID: CmdQR, Contract: Variable, Description: "QMB recall"},
	{Mnemonic: "QS", ID: CmdQS, Contract: Variable, Description: "Quick split"},
	{Mnemonic: "RA", ID: CmdRA, Contract: Variable, Description: "RF attenuator"},
	{Mnemonic: "RC", ID: CmdRC, Contract: Variable, Description: "Clar clear"},
	{Mnemonic: "RD", ID: CmdRD, Contract: Variable, Description: "Clar down"},
	{Mnemonic: "RF", ID: CmdRF, Contract: Variable, Description: "Roofing filter"},
	{Mnemonic: "RG", ID: CmdRG, Contract: Variable, Description: "RF gain"},
	{Mnemonic: "RI", ID: CmdRI, Contract: Variable, Description: "Radio information"},
	{Mnemonic: "RL", ID: CmdRL, Contract: Variable, Description: "Noise reduction level"},
	{Mnemonic: "RM", ID: CmdRM, Contract: Variable, Description: "Read meter"},
	{Mnemonic: "RS", ID: CmdRS, Contract: Variable, Description: "Radio status"},
	{Mnemonic: "RT", ID: CmdRT, Contract: Variable, Description: "Clar"},
	{Mnemonic: "RU", ID: CmdRU, Contract: Variable, Description: "Clar up"},
	{Mnemonic: "SC", ID: CmdSC, Contract: Variable, Description: "Scan"},
	{Mnemonic: "SD", ID: CmdSD, Contract: Variable, Description: "Semi break-in delay time"},
	{Mnemonic: "SF", ID: CmdSF, Contract: Variable, Description: "Sub dial"},
	{Mnemonic: "SH", ID: CmdSH, Contract: Variable, Description: "Width"},
	{Mnemonic: "SM", ID: CmdSM, Contract: Variable, Description: "S meter"},
	{Mnemonic: "SQ", ID: CmdSQ, Contract: Variable, Description: "Squelch level"},
	{Mnemonic: "SS", ID: CmdSS, Contract: Variable, Description: "Spectrum scope"},
	{Mnemonic: "ST", ID: CmdST, Contract: Variable, Description: "Split"},
	{Mnemonic: "SV", ID: CmdSV, Contract: Variable, Description: "Swap VFO"},
	{Mnemonic: "SY", ID: CmdSY, Contract: Variable, Description: "Sync"},
	{Mnemonic: "TX", ID: CmdTX, Contract: Variable, Description: "TX set"},
	{Mnemonic: "UL", ID: CmdUL, Contract: Variable, Description: "Unlock"},
	{Mnemonic: "UP", ID: CmdUP, Contract: Variable, Description: "Up"},
	{Mnemonic: "VD", ID: CmdVD, Contract: Variable, Description: "VOX delay time"},
	{Mnemonic: "VG", ID: CmdVG, Contract: Variable, Description: "VOX gain"},
	{Mnemonic: "VM", ID: CmdVM, Contract: Variable, Description: "[V/M] key function"},
	{Mnemonic: "VS", ID: CmdVS, Contract: Variable, Description: "VFO select"},
	{Mnemonic: "VT", ID: CmdVT, Contract: Variable, Description: "VCT(VC tune)"},
	{Mnemonic: "VX", ID: CmdVX, Contract: Variable, Description: "VOX"},
	{Mnemonic: "XT", ID: CmdXT, Contract: Variable, Description: "TX clar"},
	{Mnemonic: "ZI", ID: CmdZI, Contract: Variable, Description: "Zero in"},
}
